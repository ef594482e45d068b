package hit

import "time"

// Pageview describes a page view.
type Pageview struct {
	Hostname string // dh
	Path     string // dp
	Title    string // dt
}

func (p Pageview) HitType() string { return TypePageview }

func (p Pageview) Fields() []Field {
	return []Field{
		{"dh", p.Hostname},
		{"dp", p.Path},
		{"dt", p.Title},
	}
}

// Event describes a user interaction. Label and Value are always sent,
// empty when unset.
type Event struct {
	Category string
	Action   string
	Label    string
	Value    *int
}

func (p Event) HitType() string { return TypeEvent }

func (p Event) Fields() []Field {
	return []Field{
		{"ec", p.Category},
		{"ea", p.Action},
		{"el", p.Label},
		{"ev", p.Value},
	}
}

// Screenview describes an app screen view.
type Screenview struct {
	AppName        string // an
	AppVersion     string // av
	AppID          string // aid
	AppInstallerID string // aiid
	ScreenName     string // cd
}

func (p Screenview) HitType() string { return TypeScreenview }

func (p Screenview) Fields() []Field {
	return []Field{
		{"an", p.AppName},
		{"av", p.AppVersion},
		{"aid", p.AppID},
		{"aiid", p.AppInstallerID},
		{"cd", p.ScreenName},
	}
}

// Transaction describes an ecommerce transaction.
type Transaction struct {
	ID          string
	Affiliation string
	Revenue     float64
	Shipping    float64
	Tax         float64
	Currency    string
}

func (p Transaction) HitType() string { return TypeTransaction }

func (p Transaction) Fields() []Field {
	return []Field{
		{"ti", p.ID},
		{"ta", p.Affiliation},
		{"tr", p.Revenue},
		{"ts", p.Shipping},
		{"tt", p.Tax},
		{"cu", p.Currency},
	}
}

// Social describes a social network interaction.
type Social struct {
	Action  string
	Network string
	Target  string
}

func (p Social) HitType() string { return TypeSocial }

func (p Social) Fields() []Field {
	return []Field{
		{"sa", p.Action},
		{"sn", p.Network},
		{"st", p.Target},
	}
}

// Exception describes an application error. Fatal is sent as exf=1 or
// exf=0.
type Exception struct {
	Description string
	Fatal       bool
}

func (p Exception) HitType() string { return TypeException }

func (p Exception) Fields() []Field {
	return []Field{
		{"exd", p.Description},
		{"exf", p.Fatal},
	}
}

// Refund reverses a transaction. It is sent as an event hit carrying the
// refund product action.
type Refund struct {
	TransactionID  string
	Category       string // defaults to "Ecommerce"
	Action         string // defaults to "Refund"
	NonInteraction *int   // defaults to 1
}

func (p Refund) HitType() string { return TypeEvent }

func (p Refund) Fields() []Field {
	category, action, ni := p.Category, p.Action, 1
	if category == "" {
		category = "Ecommerce"
	}
	if action == "" {
		action = "Refund"
	}
	if p.NonInteraction != nil {
		ni = *p.NonInteraction
	}
	return []Field{
		{"ec", category},
		{"ea", action},
		{"ni", ni},
		{"ti", p.TransactionID},
		{"pa", "refund"},
	}
}

// Item describes one line of a transaction. Empty optional strings and nil
// pointers are left out of the hit.
type Item struct {
	TransactionID string
	Name          string
	Price         *float64
	Quantity      *int
	SKU           string
	Variation     string
	Currency      string
}

func (p Item) HitType() string { return TypeItem }

func (p Item) Fields() []Field {
	fields := []Field{
		{"ti", p.TransactionID},
		{"in", p.Name},
	}
	if p.Price != nil {
		fields = append(fields, Field{"ip", *p.Price})
	}
	if p.Quantity != nil {
		fields = append(fields, Field{"iq", *p.Quantity})
	}
	fields = appendString(fields, "ic", p.SKU)
	fields = appendString(fields, "iv", p.Variation)
	fields = appendString(fields, "cu", p.Currency)
	return fields
}

// Timing describes a user timing measurement. Durations are sent in
// milliseconds; nil optional durations are left out of the hit.
type Timing struct {
	Category       string
	Variable       string
	Time           time.Duration
	Label          string
	DNS            *time.Duration
	PageDownload   *time.Duration
	Redirect       *time.Duration
	TCPConnect     *time.Duration
	ServerResponse *time.Duration
}

func (p Timing) HitType() string { return TypeTiming }

func (p Timing) Fields() []Field {
	fields := []Field{
		{"utc", p.Category},
		{"utv", p.Variable},
		{"utt", p.Time},
	}
	fields = appendString(fields, "url", p.Label)
	fields = appendDuration(fields, "dns", p.DNS)
	fields = appendDuration(fields, "pdt", p.PageDownload)
	fields = appendDuration(fields, "rrt", p.Redirect)
	fields = appendDuration(fields, "tcp", p.TCPConnect)
	fields = appendDuration(fields, "srt", p.ServerResponse)
	return fields
}

func appendString(fields []Field, key, value string) []Field {
	if value == "" {
		return fields
	}
	return append(fields, Field{key, value})
}

func appendDuration(fields []Field, key string, value *time.Duration) []Field {
	if value == nil {
		return fields
	}
	return append(fields, Field{key, *value})
}
