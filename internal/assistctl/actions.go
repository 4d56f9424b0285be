package assistctl

// Indirection layer to allow stubbing in tests

var (
	fnInstallDeps  = installDeps
	fnInstallLlama = installLlama

	fnRunGoTests  = runGoTests
	fnRunE2ETests = runE2ETests

	fnRunSmoke = runSmoke
	fnWaitHTTP = waitHTTP
)
