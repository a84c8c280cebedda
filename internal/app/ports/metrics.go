package ports

import "wildcraft/internal/domain/survival"

type ActionMetrics interface {
	RecordSuccess(resultCode survival.ResultCode)
	RecordRejected(resultCode survival.ResultCode)
	RecordConflict()
	RecordFailure()
}

type TickMetrics interface {
	RecordTick(resultCode survival.ResultCode)
	RecordTickSkipped()
}
