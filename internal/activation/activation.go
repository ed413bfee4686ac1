// Package activation implements the scalar activation functions and their derivatives.
package activation

import (
	"fmt"
	"math"
)

// Kind enumerates the supported activation functions.
type Kind int

const (
	Sigmoid Kind = iota
	Tanh
	ReLU
	LeakyReLU
	ELU
	Swish
	GELU
	Step
)

// Kinds lists all activation kinds in display order.
var Kinds = []Kind{Sigmoid, Tanh, ReLU, LeakyReLU, ELU, Swish, GELU, Step}

const (
	// DefaultLeakyAlpha is the slope of leaky relu for negative inputs.
	DefaultLeakyAlpha = 0.01
	// DefaultELUAlpha is the saturation value of elu.
	DefaultELUAlpha = 1.0
	// DefaultSwishBeta is the sigmoid gain of swish.
	DefaultSwishBeta = 1.0
)

// gelu tanh approximation constants
var geluScale = math.Sqrt(2 / math.Pi)

const geluCubic = 0.044715

func (k Kind) String() string {
	switch k {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case LeakyReLU:
		return "leaky-relu"
	case ELU:
		return "elu"
	case Swish:
		return "swish"
	case GELU:
		return "gelu"
	case Step:
		return "step"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Parse returns the kind for the given name.
func Parse(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown activation: %s", s)
}

// Parametric returns true if the kind has a shape parameter.
func (k Kind) Parametric() bool {
	switch k {
	case LeakyReLU, ELU, Swish:
		return true
	}
	return false
}

// Function is an activation with its shape parameter fixed.
// Param is alpha for leaky-relu and elu, beta for swish, and ignored otherwise.
type Function struct {
	Kind  Kind
	Param float64
}

// New creates the activation with the default shape parameter.
func New(k Kind) Function {
	switch k {
	case LeakyReLU:
		return Function{Kind: k, Param: DefaultLeakyAlpha}
	case ELU:
		return Function{Kind: k, Param: DefaultELUAlpha}
	case Swish:
		return Function{Kind: k, Param: DefaultSwishBeta}
	}
	return Function{Kind: k}
}

// WithParam returns the function with the given shape parameter.
func (f Function) WithParam(p float64) Function {
	f.Param = p
	return f
}

// F applies the activation function.
func (f Function) F(x float64) float64 {
	switch f.Kind {
	case Sigmoid:
		return sigmoid(x)
	case Tanh:
		return math.Tanh(x)
	case ReLU:
		return math.Max(0, x)
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return f.Param * x
	case ELU:
		if x > 0 {
			return x
		}
		return f.Param * (math.Exp(x) - 1)
	case Swish:
		return x * sigmoid(f.Param*x)
	case GELU:
		return 0.5 * x * (1 + math.Tanh(geluScale*(x+geluCubic*x*x*x)))
	case Step:
		if x >= 0 {
			return 1
		}
		return 0
	}
	panic(fmt.Sprintf("unknown activation %v", f.Kind))
}

// D returns the derivative of the activation function at x.
func (f Function) D(x float64) float64 {
	switch f.Kind {
	case Sigmoid:
		s := sigmoid(x)
		return s * (1 - s)
	case Tanh:
		t := math.Tanh(x)
		return 1 - t*t
	case ReLU:
		if x > 0 {
			return 1
		}
		return 0
	case LeakyReLU:
		if x > 0 {
			return 1
		}
		return f.Param
	case ELU:
		if x > 0 {
			return 1
		}
		return f.Param * math.Exp(x)
	case Swish:
		s := sigmoid(f.Param * x)
		return s + f.Param*x*s*(1-s)
	case GELU:
		t := math.Tanh(geluScale * (x + geluCubic*x*x*x))
		sech2 := 1 - t*t
		if sech2 == 0 {
			// saturated, the second term vanishes
			return 0.5 * (1 + t)
		}
		return 0.5*(1+t) + 0.5*x*sech2*geluScale*(1+3*geluCubic*x*x)
	case Step:
		return 0
	}
	panic(fmt.Sprintf("unknown activation %v", f.Kind))
}

// sigmoid relies on exp saturating to 0 or +Inf for large inputs.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
