package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey 商品排序键
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByRating    SortKey = "rating"
	SortByReviews   SortKey = "reviews"
)

// FilterCriteria 筛选条件
// 每次条件变化时在整个目录上重新计算，无增量筛选
type FilterCriteria struct {
	// 搜索关键词，空串匹配所有商品
	Query string
	// 分类，All 或空串不过滤
	Category Category
	// 价格区间下界（含），按折后价比较
	MinPrice decimal.Decimal
	// 价格区间上界（含），零值表示不设上界
	MaxPrice decimal.Decimal
	// 排序键，默认按名称
	Sort SortKey
}

// Apply 在目录快照上执行筛选与排序，返回新切片，不修改入参
// 排序是稳定的：比较键相同时保持目录原有顺序
func (c FilterCriteria) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	query := strings.ToLower(strings.TrimSpace(c.Query))

	for _, p := range products {
		if !c.matchesSearch(p, query) {
			continue
		}
		if !c.matchesCategory(p) {
			continue
		}
		if !c.matchesPriceRange(p) {
			continue
		}
		filtered = append(filtered, p)
	}

	c.sortProducts(filtered)
	return filtered
}

// matchesSearch 名称或描述的大小写不敏感子串匹配
func (c FilterCriteria) matchesSearch(p Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func (c FilterCriteria) matchesCategory(p Product) bool {
	if c.Category == "" || c.Category == CategoryAll {
		return true
	}
	return p.Category == c.Category
}

// matchesPriceRange 按折后价比较，区间为闭区间
func (c FilterCriteria) matchesPriceRange(p Product) bool {
	price := p.DiscountedPrice()
	if price.LessThan(c.MinPrice) {
		return false
	}
	if c.MaxPrice.IsPositive() && price.GreaterThan(c.MaxPrice) {
		return false
	}
	return true
}

// sortProducts 排序规则：
//   - name: 名称升序
//   - price-low/price-high: 原价升/降序（不按折后价）
//   - rating: 评分降序
//   - reviews: 评价数降序
func (c FilterCriteria) sortProducts(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch c.Sort {
		case SortByPriceLow:
			return a.Price.LessThan(b.Price)
		case SortByPriceHigh:
			return a.Price.GreaterThan(b.Price)
		case SortByRating:
			return a.Rating > b.Rating
		case SortByReviews:
			return a.Reviews > b.Reviews
		default:
			return a.Name < b.Name
		}
	})
}
