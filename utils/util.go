package utils

import "math"

// Round 四舍五入到指定小数位
// 功能：对浮点数按十进制位数取整，用于对外输出的时间序列数值
// 参数：v-原始值，digits-保留的小数位数
// 返回：取整后的值
func Round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
