package testsCommon

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// ArchiveStub -
type ArchiveStub struct {
	SaveRecordsHandler   func(ctx context.Context, category common.Category, records []common.LaunchRecord) error
	GetYearHandler       func(ctx context.Context, year int) ([]common.LaunchRecord, error)
	CountByRocketHandler func(ctx context.Context, year int) (map[string]int, error)
	CloseHandler         func() error
}

// SaveRecords -
func (stub *ArchiveStub) SaveRecords(ctx context.Context, category common.Category, records []common.LaunchRecord) error {
	if stub.SaveRecordsHandler != nil {
		return stub.SaveRecordsHandler(ctx, category, records)
	}

	return nil
}

// GetYear -
func (stub *ArchiveStub) GetYear(ctx context.Context, year int) ([]common.LaunchRecord, error) {
	if stub.GetYearHandler != nil {
		return stub.GetYearHandler(ctx, year)
	}

	return make([]common.LaunchRecord, 0), nil
}

// CountByRocket -
func (stub *ArchiveStub) CountByRocket(ctx context.Context, year int) (map[string]int, error) {
	if stub.CountByRocketHandler != nil {
		return stub.CountByRocketHandler(ctx, year)
	}

	return make(map[string]int), nil
}

// Close -
func (stub *ArchiveStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *ArchiveStub) IsInterfaceNil() bool {
	return stub == nil
}
