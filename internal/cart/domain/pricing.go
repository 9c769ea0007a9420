package domain

import "github.com/shopspring/decimal"

// ShippingMethod 配送方式
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Valid 配送方式是否合法
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// 定价常量。运费门槛与固定费率不随商品配置
var (
	// FreeShippingThreshold 免运费门槛，小计达到即免运费（含等于）
	FreeShippingThreshold = decimal.RequireFromString("50")
	// StandardShippingRate 标准配送固定运费
	StandardShippingRate = decimal.RequireFromString("9.99")
	// ExpressShippingRate 快速配送固定运费
	ExpressShippingRate = decimal.RequireFromString("19.99")
	// TaxRate 固定税率 8%
	TaxRate = decimal.RequireFromString("0.08")
)

// Subtotal 小计 Σ price × quantity，保持精确值不做中间舍入
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ShippingCost 运费：小计 >= 50 免运费，否则按配送方式取固定费率
func ShippingCost(subtotal decimal.Decimal, method ShippingMethod) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	if method == ShippingExpress {
		return ExpressShippingRate
	}
	return StandardShippingRate
}

// Tax 税额：小计 × 8%
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

// Total 应付总额
func Total(subtotal, shipping, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Add(tax)
}

// Quote 一次定价结果，仅在展示层做两位小数舍入
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// PriceCart 对购物车快照计算完整报价
func PriceCart(items []CartItem, method ShippingMethod) Quote {
	subtotal := Subtotal(items)
	shipping := ShippingCost(subtotal, method)
	tax := Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    Total(subtotal, shipping, tax),
	}
}
