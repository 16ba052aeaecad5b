package config

// fileConfig is the on-disk shape shared by pwstasks.yaml and pwstasks.json5.
// Pointer fields distinguish "unset" from a zero value.
type fileConfig struct {
	PWSTasks section `yaml:"pwstasks" json:"pwstasks"`
}

type section struct {
	Paths   pathsDTO   `yaml:"paths" json:"paths"`
	Files   filesDTO   `yaml:"files" json:"files"`
	Scrape  scrapeDTO  `yaml:"scrape" json:"scrape"`
	Fetch   fetchDTO   `yaml:"fetch" json:"fetch"`
	Archive archiveDTO `yaml:"archive" json:"archive"`
}

type pathsDTO struct {
	InputDir        string `yaml:"input_dir" json:"input_dir"`
	DataDir         string `yaml:"data_dir" json:"data_dir"`
	ArchivesDir     string `yaml:"archives_dir" json:"archives_dir"`
	IntermediateDir string `yaml:"intermediate_dir" json:"intermediate_dir"`
	LogsDir         string `yaml:"logs_dir" json:"logs_dir"`
}

type filesDTO struct {
	HTMLURLs        string `yaml:"html_urls" json:"html_urls"`
	URLs            string `yaml:"urls" json:"urls"`
	RequestsCacheDB string `yaml:"requests_cache_db" json:"requests_cache_db"`
}

type scrapeDTO struct {
	URLsToProcess *int `yaml:"urls_to_process" json:"urls_to_process"`
}

type fetchDTO struct {
	InputDataURL string   `yaml:"input_data_url" json:"input_data_url"`
	Mechanism    string   `yaml:"mechanism" json:"mechanism"`
	Command      string   `yaml:"command" json:"command"`
	Args         []string `yaml:"args" json:"args"`
	Timeout      string   `yaml:"timeout" json:"timeout"`
}

type archiveDTO struct {
	FailIfExists *bool  `yaml:"fail_if_exists" json:"fail_if_exists"`
	Symlinks     string `yaml:"symlinks" json:"symlinks"`
}
