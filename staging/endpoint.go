// Package staging decides which artifacts travel to the cluster for a
// given master endpoint designation.
package staging

// EndpointClass classifies a symbolic master endpoint
type EndpointClass string

// Endpoint classes. The three local variants run the job inside the
// submitting process, so nothing is shipped; everything else is a remote
// cluster address.
const (
	AutoLocal       EndpointClass = "auto-local"
	CollectionLocal EndpointClass = "collection-local"
	ExplicitLocal   EndpointClass = "explicit-local"
	Remote          EndpointClass = "remote"
)

// Local endpoint literals, matched exactly and case-sensitively
const (
	MasterAuto       = "[auto]"
	MasterCollection = "[collection]"
	MasterLocal      = "[local]"
)

// Endpoint is a classified master endpoint designation
type Endpoint struct {
	Raw   string
	Class EndpointClass
}

// IsLocal reports whether the endpoint runs the job locally
func (e Endpoint) IsLocal() bool {
	return e.Class != Remote
}

// Address returns the cluster address for remote endpoints, empty otherwise
func (e Endpoint) Address() string {
	if e.Class == Remote {
		return e.Raw
	}
	return ""
}

// Classify maps a master endpoint string onto exactly one endpoint class.
// Any string that is not one of the bracketed local literals is treated as
// a remote cluster address, including malformed ones; rejecting those is
// the engine's concern at submission time.
func Classify(master string) Endpoint {
	switch master {
	case MasterAuto:
		return Endpoint{Raw: master, Class: AutoLocal}
	case MasterCollection:
		return Endpoint{Raw: master, Class: CollectionLocal}
	case MasterLocal:
		return Endpoint{Raw: master, Class: ExplicitLocal}
	default:
		return Endpoint{Raw: master, Class: Remote}
	}
}
