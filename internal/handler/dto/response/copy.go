package response

import (
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/money"
)

// amounts are rendered with exactly two fractional digits
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{{
		SrcType: decimal.Decimal{},
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			return money.Format(src.(decimal.Decimal)), nil
		},
	}},
}

func copyNew[T any](src any) (*T, error) {
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		return nil, err
	}
	return dst, nil
}

func copySlice[T any](src any) ([]T, error) {
	dst := []T{}
	if err := copier.CopyWithOption(&dst, src, copyOption); err != nil {
		return nil, err
	}
	return dst, nil
}
