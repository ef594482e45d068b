package hit

// Hit types understood by the collection endpoint.
const (
	TypePageview    = "pageview"
	TypeScreenview  = "screenview"
	TypeEvent       = "event"
	TypeTransaction = "transaction"
	TypeItem        = "item"
	TypeSocial      = "social"
	TypeException   = "exception"
	TypeTiming      = "timing"
)

// Params is implemented by the typed parameter set of each hit type.
type Params interface {
	HitType() string
	Fields() []Field
}

// Factory stamps the mandatory protocol fields onto every hit it creates.
type Factory struct {
	Version    int
	TrackingID string
	ClientID   string
}

// New creates a Tracker for hitType. The mandatory fields come first in
// the order v, tid, cid, t; fields are merged after them.
func (f Factory) New(hitType string, fields ...Field) *Tracker {
	t := NewTracker(
		Field{Key: "v", Value: f.Version},
		Field{Key: "tid", Value: f.TrackingID},
		Field{Key: "cid", Value: f.ClientID},
		Field{Key: "t", Value: hitType},
	)
	return t.Append(fields...)
}

// Create creates a Tracker from a typed parameter set.
func (f Factory) Create(p Params) *Tracker {
	return f.New(p.HitType(), p.Fields()...)
}
