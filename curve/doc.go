// Package curve turns a handful of shape parameters into a stepper pulse-time ramp.
//
// Generation runs in four steps:
//
//   - EffectiveRange maps the percentage range onto index bounds of the full sequence.
//   - Shape samples the interior shape (Linear, Exponential, SCurve, Cosine, Parabolic, Power).
//   - Blend replaces the lead-in and lead-out samples with smoothstep transitions anchored on
//     the configured start and end values.
//   - Assemble truncates the blended samples to integers and pads the sequence outside the
//     effective range with the start and end values.
//
// Every function is pure: the same Spec always produces the same sequence.
package curve
