package cache

// GraphKeyOpts are the options that change a similarity graph output.
type GraphKeyOpts struct {
	Format    string   `json:"format"`
	MinWeight *float64 `json:"min_weight,omitempty"`
	Metrics   []string `json:"metrics,omitempty"`
}

// TreeKeyOpts are the options that change a merged journey tree output.
type TreeKeyOpts struct {
	Format    string `json:"format"`
	Mode      string `json:"mode"`
	RootLabel string `json:"root_label,omitempty"`
}

// Keyer derives cache keys from an input hash and output options.
type Keyer interface {
	GraphKey(inputHash string, opts GraphKeyOpts) string
	TreeKey(inputHash string, opts TreeKeyOpts) string
}

// DefaultKeyer produces "graph:<sha256>" and "tree:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey hashes the input hash together with opts.
func (DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// TreeKey hashes the input hash together with opts.
func (DefaultKeyer) TreeKey(inputHash string, opts TreeKeyOpts) string {
	return hashKey("tree", inputHash, opts)
}
