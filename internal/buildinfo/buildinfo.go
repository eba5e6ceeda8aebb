package buildinfo

const Graffiti = " _    _  _ _  _ \n| |__| \\| | \\| |\n| / /| .` | .` |\n|_\\_\\|_|\\_|_|\\_|\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "KNN"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo

// String renders name, build time and tag on one line.
func (b buildinfo) String() string {
	if b.Time() == "" {
		return b.Name() + " " + b.Tag()
	}
	return b.Name() + " " + b.Tag() + " (" + b.Time() + ")"
}
