package cache

// ScopedKeyer prefixes every key of an inner [Keyer], giving each tenant of
// a shared cache its own namespace.
//
//	tenant := cache.NewScopedKeyer(nil, "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(inputHash, opts)
}

func (k *ScopedKeyer) ChartKey(url string) string {
	return k.prefix + k.inner.ChartKey(url)
}
