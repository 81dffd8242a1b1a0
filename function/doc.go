// Package function builds native functions that script can call.
//
// Arguments is the per-call view over engine.CallArgs. It roots every
// argument and the receiver up front, so a native body can run coercions
// that re-enter script without losing its inputs.
//
//	sum := function.New(cx, "sum", 2, func(args *function.Arguments) error {
//		a, err := function.Arg(args, 0, false, convert.Default, convert.Int32)
//		if err != nil {
//			return err
//		}
//		b, err := function.Arg(args, 1, false, convert.Default, convert.Int32)
//		if err != nil {
//			return err
//		}
//		args.Rval().SetRaw(cx.Runtime().ToValue(a + b))
//		return nil
//	})
//
// Wrap does the same by reflection for ordinary Go functions.
//
// Errors returned from a native body are thrown into script: KindNone
// errors rethrow the engine exception they carry, KindType errors throw a
// TypeError with the conversion message.
package function
