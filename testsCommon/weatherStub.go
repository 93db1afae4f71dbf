package testsCommon

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// WeatherStub -
type WeatherStub struct {
	FetchHandler func(ctx context.Context, lat float64, lon float64) common.WeatherSnapshot
}

// Fetch -
func (stub *WeatherStub) Fetch(ctx context.Context, lat float64, lon float64) common.WeatherSnapshot {
	if stub.FetchHandler != nil {
		return stub.FetchHandler(ctx, lat, lon)
	}

	return common.WeatherSnapshot{}
}

// IsInterfaceNil -
func (stub *WeatherStub) IsInterfaceNil() bool {
	return stub == nil
}
