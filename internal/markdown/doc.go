// Package markdown renders markdown-authored blog bodies into the HTML
// stored alongside each translation.
package markdown
