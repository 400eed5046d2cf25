package cytoscape

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// A sandbox is a directory on the Cytoscape workstation that file
// operations resolve against. With no sandbox active, paths name the
// workstation filesystem directly, which only works when the workflow
// runs on the same machine as Cytoscape. Sandbox state is per Client,
// so two clients driving two instances never share it.

var windowsDriveRE = regexp.MustCompile(`^[A-Za-z]:`)

func isAbsPath(p string) bool {
	return strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || windowsDriveRE.MatchString(p)
}

// absSandboxPath resolves a file name against the active sandbox for
// commands (like export) that take workstation paths directly.
func (c *Client) absSandboxPath(file string) string {
	c.mu.Lock()
	root := c.sandboxPath
	c.mu.Unlock()
	if root == "" || isAbsPath(file) {
		return file
	}
	return root + "/" + file
}

// sandboxOp appends the active sandbox and file name to a filetransfer
// command and runs it.
func (c *Client) sandboxOp(ctx context.Context, command, fileName string) (map[string]any, error) {
	c.mu.Lock()
	name := c.sandbox
	c.mu.Unlock()

	if name != "" {
		command += fmt.Sprintf(` sandboxName="%s"`, name)
	}
	if fileName != "" {
		command += fmt.Sprintf(` fileName="%s"`, strings.TrimSpace(fileName))
	}
	res, err := c.rest.CommandsPost(ctx, command)
	if err != nil {
		return nil, err
	}
	return asMap(res), nil
}

// SandboxOptions tunes SandboxSet for a newly created sandbox.
type SandboxOptions struct {
	// SkipSamples leaves the Cytoscape sample data out of the sandbox.
	SkipSamples bool
	// KeepContents preserves an existing sandbox's files instead of
	// reinitializing it.
	KeepContents bool
}

// SandboxSet makes the named sandbox the client's active one, creating
// it on the workstation if needed, and returns its absolute path there.
// An empty name deactivates sandboxing and reverts to the raw
// workstation filesystem.
func (c *Client) SandboxSet(ctx context.Context, name string, opts SandboxOptions) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.mu.Lock()
		c.sandbox, c.sandboxPath = "", ""
		c.mu.Unlock()
		return "", nil
	}
	res, err := c.rest.CommandsPost(ctx, fmt.Sprintf(
		`filetransfer setSandbox sandboxName="%s" copySamples=%t reinitialize=%t`,
		name, !opts.SkipSamples, !opts.KeepContents))
	if err != nil {
		return "", err
	}
	path, _ := mapStr(asMap(res), "sandboxPath")
	c.mu.Lock()
	c.sandbox, c.sandboxPath = name, path
	c.mu.Unlock()
	return path, nil
}

// SandboxRemove deletes a sandbox's directory and contents on the
// workstation. An empty name removes the active sandbox, which also
// deactivates it.
func (c *Client) SandboxRemove(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	c.mu.Lock()
	current := c.sandbox
	c.mu.Unlock()
	if name == "" {
		name = current
	}
	if name == "" {
		return validationf("no sandbox is active and none was named")
	}
	_, err := c.rest.CommandsPost(ctx,
		fmt.Sprintf(`filetransfer removeSandbox sandboxName="%s"`, name))
	if err != nil {
		return err
	}
	if name == current {
		c.mu.Lock()
		c.sandbox, c.sandboxPath = "", ""
		c.mu.Unlock()
	}
	return nil
}

// SandboxFileInfo describes one file in the active sandbox.
type SandboxFileInfo struct {
	FilePath     string `json:"filePath"`
	ModifiedTime string `json:"modifiedTime"` // empty when the file does not exist
	IsFile       bool   `json:"isFile"`
}

// SandboxGetFileInfo reports whether a sandbox file exists, its
// workstation path and its modification time. Asking about a missing
// file is not an error; ModifiedTime comes back empty.
func (c *Client) SandboxGetFileInfo(ctx context.Context, fileName string) (*SandboxFileInfo, error) {
	res, err := c.sandboxOp(ctx, "filetransfer getFileInfo", fileName)
	if err != nil {
		return nil, err
	}
	var info SandboxFileInfo
	if err := reshape(res, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SandboxSendTo copies a local file into the sandbox and returns the
// written file's workstation path. The content travels base64-encoded
// through the command surface.
func (c *Client) SandboxSendTo(ctx context.Context, localFile, destFile string, overwrite bool) (string, error) {
	content, err := os.ReadFile(localFile)
	if err != nil {
		return "", validationf("cannot read %q: %v", localFile, err)
	}
	if destFile == "" {
		destFile = baseName(localFile)
	}
	encoded := base64.StdEncoding.EncodeToString(content)
	res, err := c.sandboxOp(ctx, fmt.Sprintf(
		`filetransfer toSandbox fileByteCount=%d overwrite=%t fileBase64="%s"`,
		len(content), overwrite, encoded), destFile)
	if err != nil {
		return "", err
	}
	path, _ := mapStr(res, "filePath")
	return path, nil
}

// SandboxGetFrom copies a sandbox file to the local filesystem.
func (c *Client) SandboxGetFrom(ctx context.Context, sourceFile, localFile string, overwrite bool) error {
	if localFile == "" {
		localFile = baseName(sourceFile)
	}
	if !overwrite {
		if _, err := os.Stat(localFile); err == nil {
			return validationf("local file %q already exists", localFile)
		}
	}
	res, err := c.sandboxOp(ctx, "filetransfer fromSandbox", sourceFile)
	if err != nil {
		return err
	}
	encoded, _ := mapStr(res, "fileBase64")
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return validationf("sandbox returned undecodable content for %q: %v", sourceFile, err)
	}
	if err := os.WriteFile(localFile, content, 0o644); err != nil {
		return validationf("cannot write %q: %v", localFile, err)
	}
	return nil
}

// SandboxURLTo downloads a URL into the sandbox on the workstation side
// and returns the written file's workstation path.
func (c *Client) SandboxURLTo(ctx context.Context, sourceURL, destFile string, overwrite bool) (string, error) {
	if sourceURL == "" || destFile == "" {
		return "", validationf("source URL and destination file are both required")
	}
	res, err := c.sandboxOp(ctx, fmt.Sprintf(
		`filetransfer urlToSandbox overwrite=%t sourceURL=%s`, overwrite, sourceURL), destFile)
	if err != nil {
		return "", err
	}
	path, _ := mapStr(res, "filePath")
	return path, nil
}

// SandboxRemoveFile deletes one file from the sandbox. Removing a
// missing file is not an error.
func (c *Client) SandboxRemoveFile(ctx context.Context, fileName string) error {
	_, err := c.sandboxOp(ctx, "filetransfer removeFile", fileName)
	return err
}

func baseName(p string) string {
	i := strings.LastIndexAny(p, `/\`)
	return p[i+1:]
}

// reshape converts loosely decoded JSON into a typed struct.
func reshape(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return validationf("cannot reshape reply: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return validationf("cannot reshape reply: %v", err)
	}
	return nil
}
