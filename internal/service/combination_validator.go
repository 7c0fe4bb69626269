package service

import (
	"fmt"
	"strings"

	"github.com/handmade-next/internal/models"

	"github.com/shopspring/decimal"
)

// CombinationInput 卖家提交的一个规格组合及其价格、库存
type CombinationInput struct {
	OptionIDs []uint
	Price     decimal.Decimal
	Stock     int
}

const missingKeysPreview = 5

// ValidateCombinations 校验卖家提交的组合是否恰好覆盖期望的笛卡尔积。
// 元组按规范化键比较，与规格值顺序无关；缺失、重复、越界分别返回不同错误。
func ValidateCombinations(expected [][]uint, provided []CombinationInput) error {
	expectedKeys := make(map[string]struct{}, len(expected))
	for _, tuple := range expected {
		expectedKeys[CombinationKey(tuple)] = struct{}{}
	}

	providedCount := make(map[string]int, len(provided))
	for _, input := range provided {
		providedCount[CombinationKey(input.OptionIDs)]++
	}

	missing := make([]string, 0)
	for _, tuple := range expected {
		key := CombinationKey(tuple)
		if providedCount[key] == 0 {
			missing = append(missing, "["+key+"]")
		}
	}
	if len(missing) > 0 {
		preview := missing
		if len(preview) > missingKeysPreview {
			preview = preview[:missingKeysPreview]
		}
		return fmt.Errorf("%w: %d missing, e.g. %s", ErrCombinationIncomplete, len(missing), strings.Join(preview, " "))
	}

	for i, input := range provided {
		key := CombinationKey(input.OptionIDs)
		if _, ok := expectedKeys[key]; !ok {
			return fmt.Errorf("%w: combinations[%d] = [%s]", ErrCombinationUnexpected, i, key)
		}
		if providedCount[key] > 1 {
			return fmt.Errorf("%w: combinations[%d] = [%s]", ErrCombinationDuplicate, i, key)
		}
	}
	return nil
}

// validateCombinationValues 校验组合的价格与库存
func validateCombinationValues(provided []CombinationInput) error {
	for i, input := range provided {
		if models.NewMoneyFromDecimal(input.Price).IsNegative() {
			return fmt.Errorf("%w: combinations[%d]", ErrItemPriceInvalid, i)
		}
		if input.Stock < 0 {
			return fmt.Errorf("%w: combinations[%d]", ErrItemStockInvalid, i)
		}
	}
	return nil
}
