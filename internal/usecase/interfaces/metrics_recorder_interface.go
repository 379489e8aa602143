package interfaces

type IMetricsRecorder interface {
	ObserveTransition(entity, transition string)
	ObserveStockAdjustment(direction string, quantity int)
	ObserveConflict(operation string)
}
