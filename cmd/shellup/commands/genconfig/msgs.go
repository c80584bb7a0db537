package genconfig

// Message constants
const (
	MsgShort = "Print a sample configuration file"
	MsgLong  = `Prints a commented sample YAML configuration to stdout. Redirect it to a
file and edit it before running 'shellup up'.`

	MsgExample = `  shellup genconfig > setup.yaml`
)
