package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex pay_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_SUBSCRIBER           = "sub"
	UUID_PREFIX_PARCEL               = "parcel"
	UUID_PREFIX_PROVIDER_TRANSACTION = "mmtx"
	UUID_PREFIX_PAYMENT              = "pay"
	UUID_PREFIX_PROMOTION            = "promo"
)
