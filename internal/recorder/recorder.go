package recorder

import "SignalSentry/internal/model"

// Recorder persists signals and scan runs for later analysis.
type Recorder interface {
	RecordSignal(sig *model.Signal) error
	RecordScan(report *model.ScanReport) error
	Close() error
}
