package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/handmade-next/internal/constants"
)

// VariationAxis 商品声明的一个规格维度及其选中的规格值（顺序即展示顺序）
type VariationAxis struct {
	VariationID uint
	OptionIDs   []uint
}

// CountCombinations 计算组合数量，任一维度为空时为 0。
// 超过 constants.MaxProductCombinations 后停止累乘，返回上限加一。
func CountCombinations(axes []VariationAxis) int {
	if len(axes) == 0 {
		return 0
	}
	for _, axis := range axes {
		if len(axis.OptionIDs) == 0 {
			return 0
		}
	}
	total := 1
	for _, axis := range axes {
		total *= len(axis.OptionIDs)
		if total > constants.MaxProductCombinations {
			return constants.MaxProductCombinations + 1
		}
	}
	return total
}

// Combinations 计算各维度规格值的笛卡尔积。
// 第一个维度变化最慢，最后一个维度变化最快；每个元组按维度顺序排列。
func Combinations(axes []VariationAxis) [][]uint {
	total := CountCombinations(axes)
	if total == 0 {
		return [][]uint{}
	}
	result := make([][]uint, 0, total)
	cursor := make([]int, len(axes))
	for {
		tuple := make([]uint, len(axes))
		for i, axis := range axes {
			tuple[i] = axis.OptionIDs[cursor[i]]
		}
		result = append(result, tuple)

		pos := len(axes) - 1
		for pos >= 0 {
			cursor[pos]++
			if cursor[pos] < len(axes[pos].OptionIDs) {
				break
			}
			cursor[pos] = 0
			pos--
		}
		if pos < 0 {
			return result
		}
	}
}

// CombinationKey 组合的规范化键：规格值 ID 升序后拼接，与维度顺序无关
func CombinationKey(optionIDs []uint) string {
	sorted := append([]uint(nil), optionIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
