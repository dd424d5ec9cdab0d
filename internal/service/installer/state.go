package installer

// Settings is everything the wizard collects, marshalled to the runtime
// .env file on the save step.
type Settings struct {
	GeminiAPIKey string `env:"NAVI_GEMINI_API_KEY"`
	GeminiModel  string `env:"NAVI_GEMINI_MODEL"`
	HTTPAddr     string `env:"NAVI_HTTP_ADDR"`
	Debug        string `env:"NAVI_DEBUG"`
}

type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
