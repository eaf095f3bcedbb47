package config

type fileSchema struct {
	Concise bool      `toml:"concise"`
	Verbose bool      `toml:"verbose"`
	Marker  string    `toml:"marker"`
	Log     logSchema `toml:"log"`
}

type logSchema struct {
	Dir  string `toml:"dir"`
	File string `toml:"file"`
}

func toSchema(c Config) fileSchema {
	return fileSchema{
		Concise: c.Concise,
		Verbose: c.Verbose,
		Marker:  c.Marker,
		Log: logSchema{
			Dir:  c.LogDir,
			File: c.LogFile,
		},
	}
}
