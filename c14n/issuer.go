package c14n

import "strconv"

const (
	canonicalPrefix = "_:c14n"
	temporaryPrefix = "_:b"
)

// IdentifierIssuer issues sequential identifiers with a fixed prefix.
// Issuing the same key twice returns the same identifier.
//
// An issuer is never shared between trial numberings; use Clone to start a
// numbering that may be discarded.
type IdentifierIssuer struct {
	prefix  string
	counter int
	issued  map[string]string
	order   []string
}

func NewIdentifierIssuer(prefix string) *IdentifierIssuer {
	return &IdentifierIssuer{
		prefix: prefix,
		issued: make(map[string]string),
	}
}

// Issue returns the identifier for key, minting prefix+counter when key
// has not been seen before.
func (i *IdentifierIssuer) Issue(key string) string {
	if id, ok := i.issued[key]; ok {
		return id
	}
	id := i.prefix + strconv.Itoa(i.counter)
	i.counter++
	i.issued[key] = id
	i.order = append(i.order, key)
	return id
}

func (i *IdentifierIssuer) Get(key string) (string, bool) {
	id, ok := i.issued[key]
	return id, ok
}

func (i *IdentifierIssuer) Exists(key string) bool {
	_, ok := i.issued[key]
	return ok
}

// Keys returns the issued keys in issuance order.
func (i *IdentifierIssuer) Keys() []string {
	return append([]string(nil), i.order...)
}

func (i *IdentifierIssuer) Len() int { return len(i.order) }

func (i *IdentifierIssuer) Prefix() string { return i.prefix }

// Clone returns a deep copy of the issuer.
func (i *IdentifierIssuer) Clone() *IdentifierIssuer {
	c := &IdentifierIssuer{
		prefix:  i.prefix,
		counter: i.counter,
		issued:  make(map[string]string, len(i.issued)),
		order:   make([]string, len(i.order), len(i.order)+1),
	}
	for k, v := range i.issued {
		c.issued[k] = v
	}
	copy(c.order, i.order)
	return c
}
