package config

type WorkerKeyStruct struct {
	ProcessSheetsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ProcessSheetsQueue: "process_sheets_queue",
}
