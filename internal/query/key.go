package query

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Key names one cache entry. A Key with an empty Param is the resource-wide
// key; invalidating it by resource reaches every list and item of that resource.
type Key struct {
	Resource string
	Param    string
}

func (k Key) String() string {
	if k.Param == "" {
		return k.Resource
	}
	return k.Resource + ":" + k.Param
}

// KeyOf keys resource by param: an int is an item id, nil the resource
// itself, anything else a list query.
func KeyOf(resource string, param any) Key {
	switch p := param.(type) {
	case nil:
		return ResourceKey(resource)
	case int:
		return ItemKey(resource, p)
	case string:
		return Key{Resource: resource, Param: p}
	}
	return ListKey(resource, param)
}

func ResourceKey(resource string) Key { return Key{Resource: resource} }

func ItemKey(resource string, id int) Key {
	return Key{Resource: resource, Param: strconv.Itoa(id)}
}

// ListKey keys a collection query by its parameters. Params encode as JSON so
// two equal parameter structs always share an entry.
func ListKey(resource string, params any) Key {
	b, err := json.Marshal(params)
	if err != nil {
		return Key{Resource: resource, Param: fmt.Sprintf("%+v", params)}
	}
	return Key{Resource: resource, Param: string(b)}
}
