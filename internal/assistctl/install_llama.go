package assistctl

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"assistd/internal/common/fsutil"
)

// installLlama clones and builds llama.cpp as shared libraries, then
// copies them into ./bin where the llama build tag expects to link
// against them. The checkout lives at ~/src/llama.cpp unless
// ASSISTCTL_LLAMA_DIR points elsewhere.
func installLlama(cuda bool) error {
	for _, tool := range []string{"git", "cmake"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found on PATH; install it and re-run", tool)
		}
	}

	llamaDir := envStr("ASSISTCTL_LLAMA_DIR", "")
	if llamaDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		llamaDir = filepath.Join(home, "src", "llama.cpp")
	}
	buildDir := filepath.Join(llamaDir, "build-shared")

	if !fsutil.PathExists(llamaDir) {
		if err := os.MkdirAll(filepath.Dir(llamaDir), 0o755); err != nil {
			return err
		}
		info("[llama] Cloning llama.cpp into %s", llamaDir)
		if err := runCmdVerbose(context.Background(), "git", "clone", "https://github.com/ggerganov/llama.cpp.git", llamaDir); err != nil {
			return err
		}
	} else {
		info("[llama] Updating llama.cpp in %s", llamaDir)
		_ = runCmdVerbose(context.Background(), "git", "-C", llamaDir, "pull", "--ff-only")
	}

	args := []string{
		"-S", llamaDir,
		"-B", buildDir,
		"-DCMAKE_BUILD_TYPE=Release",
		"-DBUILD_SHARED_LIBS=ON",
		"-DLLAMA_BUILD_TESTS=OFF",
		"-DLLAMA_BUILD_EXAMPLES=OFF",
	}
	if cuda {
		args = append(args, "-DGGML_CUDA=ON")
	}
	info("[llama] Configuring CMake (cuda=%v)", cuda)
	if err := runCmdVerbose(context.Background(), "cmake", args...); err != nil {
		return err
	}
	if err := runCmdVerbose(context.Background(), "cmake", "--build", buildDir, "-j"); err != nil {
		return err
	}

	libs, err := findSharedLibs(buildDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	for _, lib := range libs {
		dst := filepath.Join("bin", filepath.Base(lib))
		if err := copyFile(dst, lib); err != nil {
			return err
		}
		info("[llama] Installed %s", dst)
	}

	info("[llama] Build the daemon with the in-process backend enabled:")
	info("    go build -tags llama -o bin/assistd ./cmd/assistd")
	info("[llama] Keep the binary next to the libraries in bin/ (rpath $ORIGIN).")
	return nil
}

// findSharedLibs locates libllama and the ggml libraries under the CMake
// build tree. The library layout moved between llama.cpp releases, so
// walk instead of hardcoding paths.
func findSharedLibs(buildDir string) ([]string, error) {
	var libs []string
	err := filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := d.Name()
		if !strings.HasPrefix(name, "libllama") && !strings.HasPrefix(name, "libggml") {
			return nil
		}
		if strings.Contains(name, ".so") || strings.HasSuffix(name, ".dylib") {
			libs = append(libs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(libs) == 0 {
		return nil, fmt.Errorf("no shared libraries found under %s", buildDir)
	}
	return libs, nil
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
