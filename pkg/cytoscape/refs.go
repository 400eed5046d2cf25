package cytoscape

import (
	"strconv"
	"strings"
)

// NetworkRef identifies a network by SUID, by title, or as whatever
// network is currently active in Cytoscape. The zero value means the
// current network.
type NetworkRef struct {
	suid   int64
	name   string
	bySUID bool
	byName bool
}

// CurrentNetwork refers to the network currently active in Cytoscape.
func CurrentNetwork() NetworkRef { return NetworkRef{} }

// NetworkBySUID refers to a network by its SUID.
func NetworkBySUID(suid int64) NetworkRef { return NetworkRef{suid: suid, bySUID: true} }

// NetworkByName refers to a network by its title.
func NetworkByName(name string) NetworkRef { return NetworkRef{name: name, byName: true} }

// Refs is a list of node or edge references, all names or all SUIDs.
// Mixed lists are rejected at translation time. The zero value is an
// empty list.
type Refs struct {
	names []string
	suids []int64
	raw   []string // undecided entries from RefList, resolved per call
}

// RefNames builds a reference list of entity names.
func RefNames(names ...string) Refs { return Refs{names: names} }

// RefSUIDs builds a reference list of SUIDs.
func RefSUIDs(suids ...int64) Refs { return Refs{suids: suids} }

// RefList splits a comma-separated list of references. Whether the
// entries are names or SUIDs is decided against the live table when the
// list is used: if every entry parses as an integer present in the
// table's SUID column the list is taken as SUIDs, otherwise as names.
func RefList(list string) Refs {
	parts := strings.Split(list, ",")
	raw := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			raw = append(raw, p)
		}
	}
	return Refs{raw: raw}
}

// IsEmpty reports whether the list holds no references.
func (r Refs) IsEmpty() bool {
	return len(r.names) == 0 && len(r.suids) == 0 && len(r.raw) == 0
}

// resolve classifies the list against the set of live SUIDs: it returns
// either the SUIDs or the names the list denotes. A raw list whose
// entries are partly live SUIDs and partly names is malformed.
func (r Refs) resolve(live map[int64]bool) (suids []int64, names []string, err error) {
	if len(r.suids) > 0 {
		return r.suids, nil, nil
	}
	if len(r.names) > 0 {
		return nil, r.names, nil
	}
	var asSUID, asName int
	for _, e := range r.raw {
		if n, perr := strconv.ParseInt(e, 10, 64); perr == nil && live[n] {
			asSUID++
		} else {
			asName++
		}
	}
	switch {
	case asSUID == len(r.raw):
		suids = make([]int64, len(r.raw))
		for i, e := range r.raw {
			suids[i], _ = strconv.ParseInt(e, 10, 64)
		}
		return suids, nil, nil
	case asName == len(r.raw):
		return nil, r.raw, nil
	default:
		return nil, nil, validationf("reference list mixes SUIDs and names: %v", r.raw)
	}
}
