package input

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CSV表头的必需列
var spatColumns = []string{"time_s", "intersection_id", "phase", "duration_s"}

// LoadSpat 加载SPaT记录表
// 功能：根据输入配置从CSV文件或MongoDB集合加载SPaT记录
// 参数：c-输入配置，文件路径优先级高于MongoDB
// 返回：记录列表和错误信息
// 说明：任何一行缺失字段或数值非法都会使整个加载失败，不允许部分加载
func LoadSpat(c config.Input) ([]entity.SpatRecord, error) {
	if c.Spat.File != "" {
		return loadSpatCSV(c.Spat.File)
	}
	if c.URI != "" && !c.Spat.IsZero() {
		return loadSpatMongo(c.URI, c.Spat)
	}
	return nil, errors.New("no spat source configured (need file or uri+db+col)")
}

// loadSpatCSV 从CSV文件加载SPaT记录
// 算法说明：
// 1. 读取表头并定位必需列（time_s, intersection_id, phase, duration_s）
// 2. 逐行解析数值与相位，相位大小写不敏感
// 3. 任一行解析失败立即返回带行号的解析错误
func loadSpatCSV(path string) ([]entity.SpatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open spat csv %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "read spat csv header from %s", path)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range spatColumns {
		if _, ok := index[name]; !ok {
			return nil, errors.Errorf("spat csv %s: missing column %q", path, name)
		}
	}

	records := make([]entity.SpatRecord, 0)
	for row := 1; ; row++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "spat csv %s row %d", path, row)
		}
		record, err := parseSpatFields(
			fields[index["time_s"]],
			fields[index["intersection_id"]],
			fields[index["phase"]],
			fields[index["duration_s"]],
		)
		if err != nil {
			return nil, errors.Wrapf(err, "spat csv %s row %d", path, row)
		}
		records = append(records, record)
	}
	log.Infof("loaded %d spat records from %s", len(records), path)
	return records, nil
}

// parseSpatFields 解析单行的四个字段
func parseSpatFields(timeS, id, phase, durationS string) (entity.SpatRecord, error) {
	var record entity.SpatRecord
	t, err := strconv.ParseFloat(timeS, 64)
	if err != nil {
		return record, errors.Wrap(err, "parse time_s")
	}
	if id == "" {
		return record, errors.New("empty intersection_id")
	}
	p, err := entity.ParseSignalPhase(phase)
	if err != nil {
		return record, err
	}
	d, err := strconv.ParseFloat(durationS, 64)
	if err != nil {
		return record, errors.Wrap(err, "parse duration_s")
	}
	record = entity.SpatRecord{
		TimeS:          t,
		IntersectionID: id,
		Phase:          p,
		DurationS:      d,
	}
	return record, nil
}

// spatDoc MongoDB中的SPaT文档
// 说明：指针字段用于区分缺失字段与零值
type spatDoc struct {
	TimeS          *float64 `bson:"time_s"`
	IntersectionID *string  `bson:"intersection_id"`
	Phase          *string  `bson:"phase"`
	DurationS      *float64 `bson:"duration_s"`
}

// loadSpatMongo 从MongoDB集合加载SPaT记录
// 算法说明：
// 1. 连接MongoDB并读取指定db.col的全部文档
// 2. 校验每个文档的必需字段，缺失或类型错误立即失败
func loadSpatMongo(uri string, path config.InputPath) ([]entity.SpatRecord, error) {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongodb")
	}
	defer client.Disconnect(ctx)

	log.Infof("start fetching from %s.%s", path.DB, path.Col)
	coll := client.Database(path.DB).Collection(path.Col)
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrapf(err, "find in %s.%s", path.DB, path.Col)
	}
	defer cursor.Close(ctx)

	records := make([]entity.SpatRecord, 0)
	for row := 1; cursor.Next(ctx); row++ {
		var doc spatDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "spat %s.%s doc %d", path.DB, path.Col, row)
		}
		if doc.TimeS == nil || doc.IntersectionID == nil || doc.Phase == nil || doc.DurationS == nil {
			return nil, errors.Errorf("spat %s.%s doc %d: missing field", path.DB, path.Col, row)
		}
		phase, err := entity.ParseSignalPhase(*doc.Phase)
		if err != nil {
			return nil, errors.Wrapf(err, "spat %s.%s doc %d", path.DB, path.Col, row)
		}
		records = append(records, entity.SpatRecord{
			TimeS:          *doc.TimeS,
			IntersectionID: *doc.IntersectionID,
			Phase:          phase,
			DurationS:      *doc.DurationS,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s.%s", path.DB, path.Col)
	}
	log.Infof("finish fetching from %s.%s (%d records)", path.DB, path.Col, len(records))
	return records, nil
}
