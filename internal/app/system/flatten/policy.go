package flatten

import "fmt"

// Names accepted by the Parse functions, as used in configuration.
const (
	OrderPreOrderName     = "preorder"
	OrderReverseStackName = "reverse-stack"

	NegativeLegacyName = "legacy"
	NegativeSignedName = "signed"

	InvalidSkipName   = "skip"
	InvalidRejectName = "reject"
)

func (o Order) String() string {
	switch o {
	case OrderPreOrder:
		return OrderPreOrderName
	case OrderReverseStack:
		return OrderReverseStackName
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

func (m NegativeMode) String() string {
	switch m {
	case NegativeLegacy:
		return NegativeLegacyName
	case NegativeSigned:
		return NegativeSignedName
	default:
		return fmt.Sprintf("NegativeMode(%d)", int(m))
	}
}

func (m InvalidMode) String() string {
	switch m {
	case InvalidSkip:
		return InvalidSkipName
	case InvalidReject:
		return InvalidRejectName
	default:
		return fmt.Sprintf("InvalidMode(%d)", int(m))
	}
}

// ParseOrder maps a configuration name to an Order. Empty means OrderPreOrder.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", OrderPreOrderName:
		return OrderPreOrder, nil
	case OrderReverseStackName:
		return OrderReverseStack, nil
	}
	return 0, fmt.Errorf("flatten: unknown traversal order %q (want %q or %q)", s, OrderPreOrderName, OrderReverseStackName)
}

// ParseNegativeMode maps a configuration name to a NegativeMode. Empty means NegativeLegacy.
func ParseNegativeMode(s string) (NegativeMode, error) {
	switch s {
	case "", NegativeLegacyName:
		return NegativeLegacy, nil
	case NegativeSignedName:
		return NegativeSigned, nil
	}
	return 0, fmt.Errorf("flatten: unknown negative value mode %q (want %q or %q)", s, NegativeLegacyName, NegativeSignedName)
}

// ParseInvalidMode maps a configuration name to an InvalidMode. Empty means InvalidSkip.
func ParseInvalidMode(s string) (InvalidMode, error) {
	switch s {
	case "", InvalidSkipName:
		return InvalidSkip, nil
	case InvalidRejectName:
		return InvalidReject, nil
	}
	return 0, fmt.Errorf("flatten: unknown invalid leaf mode %q (want %q or %q)", s, InvalidSkipName, InvalidRejectName)
}
