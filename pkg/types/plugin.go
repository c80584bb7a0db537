package types

// Plugin describes a zsh plugin repository to clone into the oh-my-zsh
// custom plugins directory.
type Plugin struct {
	Name string `koanf:"name" yaml:"name"`
	Repo string `koanf:"repo" yaml:"repo"`
}
