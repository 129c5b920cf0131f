// Package queryparams listeleme uçları için ortak sayfalama ve sıralama tipleri.
package queryparams

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams listeleme isteklerinin sayfalama/sıralama/filtre parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"` // asc | desc
	Status  string `query:"status"`  // opsiyonel durum filtresi
	Name    string `query:"name"`    // opsiyonel isim filtresi
}

// Validate parametreleri güvenli aralıklara çeker.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = "asc"
	}
}

// Offset SQL offset değerini hesaplar.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta sayfalama üst verisi.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult sayfalanmış liste sonucu.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages toplam sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := totalItems / int64(perPage)
	if totalItems%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}
