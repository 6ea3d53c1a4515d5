package entities

import "fmt"

// ComponentKind identifies the upstream ecosystem a component is tracked in.
type ComponentKind string

const (
	KindDockerImage ComponentKind = "docker-image"
	KindPypi        ComponentKind = "pypi"
)

// ComponentKinds lists every supported kind in a stable order.
func ComponentKinds() []ComponentKind {
	return []ComponentKind{KindDockerImage, KindPypi}
}

// ParseComponentKind maps a persisted kind tag onto the closed enum.
func ParseComponentKind(raw string) (ComponentKind, error) {
	switch ComponentKind(raw) {
	case KindDockerImage:
		return KindDockerImage, nil
	case KindPypi:
		return KindPypi, nil
	default:
		return "", fmt.Errorf("%w: component type %q is not implemented", ErrConfiguration, raw)
	}
}

func (k ComponentKind) String() string { return string(k) }

// defaultVersionPattern returns the marker template used when a declaration
// does not set one.
func (k ComponentKind) defaultVersionPattern() string {
	if k == KindDockerImage {
		return "{component}:{version}"
	}
	return "{component}=={version}"
}

// noun is the human name of the kind used in changelog entries.
func (k ComponentKind) noun() string {
	if k == KindDockerImage {
		return "image"
	}
	return "package"
}
