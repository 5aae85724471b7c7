package intrinsic

import "confparser/internal/object"

// Operator priorities, ported from confparser.cpp's GetNewIntrinsicScope:
// assignment is loosest (14), '+' (4) is looser than '*' (3), and member
// access '.' is tightest (1).
const (
	priorityAssign = 14
	priorityAdd    = 4
	priorityMul    = 3
	priorityDot    = 1
)

func operatorName(symbol string) string {
	return object.OperatorNamePrefix + symbol
}

// bootstrap wires string/int/float/object with the built-in operator set.
func (r *Registry) bootstrap() {
	r.register(buildStringType())
	r.register(buildIntType())
	r.register(buildFloatType())
	r.register(buildObjectType())
	r.register(object.NewType(object.TypeNameExpr, nil))
}

func buildStringType() *object.Type {
	ty := object.NewType(object.TypeNameString, nil)
	ty.AddChild(object.NewOperator(operatorName("="), priorityAssign,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			recv.PayloadKind = object.PayloadString
			recv.StringValue = args[0].StringValue
			return recv, nil
		}))
	return ty
}

func buildIntType() *object.Type {
	ty := object.NewType(object.TypeNameInt, nil)

	ty.AddChild(object.NewOperator(operatorName("="), priorityAssign,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			recv.PayloadKind = object.PayloadInt
			recv.IntValue = args[0].IntValue
			return recv, nil
		}))

	ty.AddChild(object.NewOperator(operatorName("+="), priorityAssign,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			recv.PayloadKind = object.PayloadInt
			recv.IntValue += args[0].IntValue
			return recv, nil
		}))

	ty.AddChild(object.NewOperator(operatorName("+"), priorityAdd,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			result := recv.Clone("__RV").(*object.Instance)
			result.IntValue = recv.IntValue + args[0].IntValue
			result.SetTemporary(true)
			return result, nil
		}))

	ty.AddChild(object.NewOperator(operatorName("*"), priorityMul,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			result := recv.Clone("__RV").(*object.Instance)
			result.IntValue = recv.IntValue * args[0].IntValue
			result.SetTemporary(true)
			return result, nil
		}))

	return ty
}

func buildFloatType() *object.Type {
	ty := object.NewType(object.TypeNameFloat, nil)
	ty.AddChild(object.NewOperator(operatorName("="), priorityAssign,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			recv.PayloadKind = object.PayloadFloat
			recv.FloatValue = args[0].FloatValue
			return recv, nil
		}))
	return ty
}

// buildObjectType wires 'object''s member-access ('.', priority 1) and
// assignment ('=') operators. Every user-declared `class` inherits these
// through the scope-merge performed when the class is declared (spec §4.8,
// §4.6): `class Point { ... }` constructs a fresh Type and merges the
// object intrinsic's children into it.
func buildObjectType() *object.Type {
	ty := object.NewType(object.TypeNameObject, nil)

	ty.AddChild(object.NewOperator(operatorName("."), priorityDot,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			member, ok := recv.GetMember(args[0].Name())
			if !ok {
				return nil, &MemberNotFoundError{Receiver: recv.Name(), Member: args[0].Name()}
			}
			return member, nil
		}))

	ty.AddChild(object.NewOperator(operatorName("="), priorityAssign,
		func(recv *object.Instance, args []*object.Instance) (*object.Instance, error) {
			if err := requireArgs(args, 1); err != nil {
				return nil, err
			}
			recv.ClearSubInstances()
			for _, sub := range args[0].SubInstances {
				recv.AddSubInstance(sub.Clone(sub.Name()).(*object.Instance))
			}
			return recv, nil
		}))

	return ty
}
