// Package markdown loads blog documents from disk, splits the front-matter
// block from the Markdown body, renders the body to HTML, and synchronises
// the results with the post index.
package markdown
