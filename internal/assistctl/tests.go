package assistctl

import "context"

func runGoTests() error {
	info("Running Go tests...")
	return runCmdStreaming(context.Background(), "go", "test", "./...")
}

// runE2ETests runs the live end-to-end suite. The suite skips itself
// unless ASSISTD_E2E=1, so set it here.
func runE2ETests() error {
	info("Running end-to-end tests...")
	env := map[string]string{"ASSISTD_E2E": "1"}
	return runEnvCmdStreaming(context.Background(), env, "go", "test", "-count=1", "./internal/e2e/...")
}
