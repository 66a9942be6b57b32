package badger

import (
	"fmt"

	"github.com/poiesic/libsearch/core"
)

// Key prefixes for different data types. The prefixes are chosen so that no
// prefix is a prefix of another, keeping iterator scans disjoint.
const (
	recordPrefix    = "librec"
	recordKeyPrefix = "libkey"
	recordPosSeq    = "libpos"
)

// makeRecordKey generates the primary key for a record by ID.
func makeRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", recordPrefix, id))
}

// makeRecordScanPrefix returns the iteration prefix covering all records.
func makeRecordScanPrefix() []byte {
	return []byte(recordPrefix + ":")
}

// makeExternalKeyKey generates the key index entry for a feed-qualified
// external key. Format: prefix:feed:externalKey -> record ID.
func makeExternalKeyKey(feed core.FeedType, externalKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", recordKeyPrefix, feed, externalKey))
}
