package testsCommon

import (
	"encoding/json"

	"github.com/hwpaige/launchboard/common"
)

// NormalizerStub -
type NormalizerStub struct {
	NormalizeBatchHandler func(raws []json.RawMessage) []common.LaunchRecord
}

// NormalizeBatch -
func (stub *NormalizerStub) NormalizeBatch(raws []json.RawMessage) []common.LaunchRecord {
	if stub.NormalizeBatchHandler != nil {
		return stub.NormalizeBatchHandler(raws)
	}

	return make([]common.LaunchRecord, 0)
}

// IsInterfaceNil -
func (stub *NormalizerStub) IsInterfaceNil() bool {
	return stub == nil
}
