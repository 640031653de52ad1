package staticcmd

const buildSiteMessageType = "blog.static.build_site"

// BuildSiteCommand triggers a full static site build from the post index.
type BuildSiteCommand struct {
	// IncludeDrafts renders draft posts alongside published ones.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// DryRun runs the build pipeline without writing artifacts.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }
