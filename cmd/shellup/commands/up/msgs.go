package up

// Message constants
const (
	MsgShort = "Run the full workspace bootstrap"
	MsgLong  = `The 'up' command runs the whole provisioning sequence against a workspace
directory:
  - backs up the existing ~/.zshrc (unless disabled in the config)
  - installs oh-my-zsh into the workspace and links ~/.oh-my-zsh to it
  - installs the configured zshrc template and resolves its placeholders
  - clones the configured zsh plugins
  - installs pixi into the workspace, links ~/.pixi, and installs packages
  - generates just completions when just is on the PATH
  - appends the configured extra config fragments to ~/.zshrc

The run is sequential and aborts on the first failure. The filesystem is
left in a partial but inspectable state; re-running converges.`

	MsgExample = `  # Bootstrap with the default workspace (~/workspace)
  shellup up --config setup.yaml

  # Bootstrap into a mounted disk
  shellup up --config setup.yaml --workspace /mnt/fast/workspace`
)
