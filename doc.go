// Package permasync is the Composition Root for permasync.
//
// permasync keeps the file names of content documents and their permalink
// field consistent inside a git repository. It is meant to run once per
// change-set, typically as a CI step on pull requests and pushes:
//
//   - A renamed file gets its permalink rewritten from the new file name.
//   - A file whose permalink was edited is renamed to match it.
//
// Features:
//
//   - **Best effort**: a failing file is skipped, the run always completes.
//   - **Lossless edits**: only the permalink value changes; key spelling,
//     spacing, quoting and newline style are preserved.
//   - **No overwrites**: a rename whose target exists is left alone.
//   - **Conflict flagging**: a rename that also edits the permalink to a
//     disagreeing value is reported instead of guessed.
//   - **Two readers**: the git CLI (default) or go-git in-process.
//
// Usage:
//
//	report, err := permasync.Run(ctx, ".",
//		permasync.WithBaseRef(os.Getenv("GITHUB_BASE_REF")),
//		permasync.WithOutput(os.Stdout),
//	)
package permasync
