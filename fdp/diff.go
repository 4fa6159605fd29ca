package fdp

// Diff computes a Patch from before to after using the chosen delta
// codec and compressor, exactly as §4.4's diff steps 1-4.
func Diff(before, after []byte, delta DeltaAlgorithm, comp CompressAlgorithm) (*Patch, error) {
	codec, err := codecFor(delta)
	if err != nil {
		return nil, err
	}
	compressor, err := compressorFor(comp)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Encode(before, after)
	if err != nil {
		return nil, err
	}
	payload, err := compressor(raw)
	if err != nil {
		return nil, err
	}

	p := &Patch{
		DeltaAlgorithm:    delta,
		CompressAlgorithm: comp,
		BeforeFingerprint: Fingerprint(before),
		AfterFingerprint:  Fingerprint(after),
		Payload:           payload,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
