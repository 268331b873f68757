package pagination

const (
	// DefaultPage is used when the caller omits or zeroes the page number.
	DefaultPage = 1
	// DefaultLimit is the standard catalog page size.
	DefaultLimit = 12
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the params to their defaults and bounds.
func (p Params) Normalize() Params {
	return Params{
		Page:  NormalizePage(p.Page),
		Limit: NormalizeLimit(p.Limit),
	}
}

// Offset returns the number of rows to skip for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// NormalizePage enforces a minimum page of one.
func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Pages returns ceil(total/limit) for a normalized limit, and zero for an
// empty result set.
func Pages(total int64, limit int) int {
	l := int64(NormalizeLimit(limit))
	if total <= 0 {
		return 0
	}
	return int((total + l - 1) / l)
}
