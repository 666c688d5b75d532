package valueobject

import (
	"fmt"

	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// Pricing — условия оплаты навыка: либо бесплатно, либо платно с положительной ценой.
// Поля скрыты, чтобы платный вариант без цены нельзя было собрать в обход конструкторов.
type Pricing struct {
	paid  bool
	price float64
}

func Free() Pricing {
	return Pricing{}
}

func Paid(price float64) (Pricing, error) {
	if price <= 0 {
		return Pricing{}, apperror.New(apperror.ErrCodeValidation, "цена платного навыка должна быть положительной").WithDetail("price", price)
	}
	return Pricing{paid: true, price: price}, nil
}

// NewPricing собирает условия из пары isPaid/price, как они приходят из формы.
// Для бесплатного навыка цена игнорируется.
func NewPricing(isPaid bool, price *float64) (Pricing, error) {
	if !isPaid {
		return Free(), nil
	}
	if price == nil {
		return Pricing{}, apperror.New(apperror.ErrCodeValidation, "для платного навыка необходимо указать цену")
	}
	return Paid(*price)
}

func (p Pricing) IsPaid() bool {
	return p.paid
}

// Price возвращает цену и признак её наличия.
func (p Pricing) Price() (float64, bool) {
	return p.price, p.paid
}

// PricePtr удобен для DTO и колонок с NULL.
func (p Pricing) PricePtr() *float64 {
	if !p.paid {
		return nil
	}
	price := p.price
	return &price
}

func (p Pricing) String() string {
	if !p.paid {
		return "free"
	}
	return fmt.Sprintf("USD %.2f", p.price)
}
