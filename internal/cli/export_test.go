package cli

// Export internal functions for testing.

// RunGenerate exports runGenerate for testing.
var RunGenerate = runGenerate

// RunBatch exports runBatch for testing.
var RunBatch = runBatch

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// ClampParallel exports clampParallel for testing.
var ClampParallel = clampParallel

// ParseAnswers exports parseAnswers for testing.
var ParseAnswers = parseAnswers

// ParseExportFormat exports parseExportFormat for testing.
var ParseExportFormat = parseExportFormat

// DefaultExportFilename exports defaultExportFilename for testing.
var DefaultExportFilename = defaultExportFilename

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey
