//go:build windows

package webgpu

// WGSL compute shaders. Every shader works on f32 storage buffers.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// absDiffShader computes the element-wise absolute difference: result = |a - b|.
const absDiffShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = abs(a[idx] - b[idx]);
    }
}
`

// reduceDimShader sums (or averages, when params.mean != 0) the middle axis
// of an input viewed as [outer, size, inner]. One thread per output element.
// Output shape: [outer, inner].
const reduceDimShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    outer: u32,
    size: u32,
    inner: u32,
    mean: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.outer * params.inner) {
        return;
    }

    let o = idx / params.inner;
    let i = idx % params.inner;
    let base = o * params.size * params.inner + i;

    var sum: f32 = 0.0;
    for (var k: u32 = 0u; k < params.size; k = k + 1u) {
        sum = sum + input[base + k * params.inner];
    }
    if (params.mean != 0u) {
        sum = sum / f32(params.size);
    }
    result[idx] = sum;
}
`
