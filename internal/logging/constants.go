package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the pipeline stages,
// the enhancement pass and the CLI commands.
const (
	FieldFile        = "file_path"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldStage       = "stage"
	FieldPattern     = "pattern_id"
	FieldReason      = "reason"
	FieldCategory    = "category"
	FieldType        = "type"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldProvider    = "provider"
	FieldAttempt     = "attempt"
	FieldScore       = "quality_score"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldRunID       = "run_id"
)
