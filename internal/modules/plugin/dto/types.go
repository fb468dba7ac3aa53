package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CommandInfo struct {
	ID          string
	Title       string
	Description string
	TimeoutMS   int
}

type AnalyzeInput struct {
	PluginName string
	CommandID  string
	WorkID     string
}

type AnalyzeOutput struct {
	PluginName string
	CommandID  string
	WorkID     string
	WorkTitle  string
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
