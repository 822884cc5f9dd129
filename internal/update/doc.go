// Package update checks whether a newer segbox release is published.
//
// It only reports; installing a release is left to the package manager
// that installed segbox.
//
//	checker := update.NewChecker("segbox/segbox")
//	status, err := checker.Check(ctx, Version)
//	if err == nil && status.Newer {
//	    fmt.Println("update available:", status.Latest)
//	}
package update
