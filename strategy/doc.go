// Package strategy holds the three presynaptic update strategies a
// synapse group's update is dispatched to: PreSpanProcedural, PreSpan and
// PostSpan, chosen by Select as the first compatible strategy in that
// fixed order. Each is a stateless value implementing the Strategy
// interface, grounded on kernels/optimize.go's VectorizedKernel "strategy
// object wrapping a scalar function" shape, generalized from wrapping one
// scalar transform to wrapping a full preamble/update/postamble triple.
package strategy
