package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldComponent  = "component"
	FieldFile       = "file_path"
	FieldFolder     = "folder"
	FieldFolderKey  = "folder_key"
	FieldMode       = "mode"
	FieldDialect    = "dialect"
	FieldRunID      = "run_id"
	FieldDate       = "date"
	FieldBucket     = "bucket"
	FieldPrefix     = "prefix"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
