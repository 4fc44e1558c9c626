package fileaccess

// Groups bundles every resolved file role of one specification.
type Groups struct {
	SpecName string
	Platform string

	SourceFiles    []string
	Headers        []string
	PublicHeaders  []string
	PrivateHeaders []string
	Resources      map[string][]string
	PreservePaths  []string

	// PrefixHeader, Readme and License hold absolute paths; each is empty
	// when its role is neither configured nor detected.
	PrefixHeader string
	Readme       string
	License      string
}

// Groups resolves every attribute and derivation in one pass. The result is
// a plain value: later filesystem changes do not affect it.
func (r *Resolver) Groups() (*Groups, error) {
	g := &Groups{
		SpecName: r.consumer.Name(),
		Platform: r.consumer.Platform(),
	}

	var err error
	if g.SourceFiles, err = r.SourceFiles(); err != nil {
		return nil, err
	}
	if g.Headers, err = r.Headers(); err != nil {
		return nil, err
	}
	if g.PublicHeaders, err = r.PublicHeaders(); err != nil {
		return nil, err
	}
	if g.PrivateHeaders, err = r.PrivateHeaders(); err != nil {
		return nil, err
	}
	if g.Resources, err = r.Resources(); err != nil {
		return nil, err
	}
	if g.PreservePaths, err = r.PreservePaths(); err != nil {
		return nil, err
	}

	g.PrefixHeader, _ = r.PrefixHeader()

	readme, ok, err := r.Readme()
	if err != nil {
		return nil, err
	}
	if ok {
		g.Readme = readme
	}

	license, ok, err := r.License()
	if err != nil {
		return nil, err
	}
	if ok {
		g.License = license
	}

	return g, nil
}
