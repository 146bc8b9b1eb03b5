package renderer

import (
	"encoding/binary"
	"math"
)

// instanceSize is the byte size of one proxy instance: a mat4x4<f32> followed by a vec4<f32>.
const instanceSize = 80

// encodeInstances packs the draw list into the storage buffer layout of the proxy shader.
func encodeInstances(items []DrawItem) []byte {
	buf := make([]byte, len(items)*instanceSize)
	for i, it := range items {
		off := i * instanceSize
		for j, f := range it.MVP {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
		off += 64
		for j, f := range it.Color {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// proxyShader draws each instance as a shaded unit box transformed by its MVP matrix.
const proxyShader = `
struct Instance {
    mvp: mat4x4<f32>,
    color: vec4<f32>,
};

@group(0) @binding(0) var<storage, read> instances: array<Instance>;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) v: u32, @builtin(instance_index) i: u32) -> VertexOut {
    var corners = array<vec3<f32>, 8>(
        vec3<f32>(-0.5, -0.5, -0.5), vec3<f32>(0.5, -0.5, -0.5),
        vec3<f32>(0.5, 0.5, -0.5), vec3<f32>(-0.5, 0.5, -0.5),
        vec3<f32>(-0.5, -0.5, 0.5), vec3<f32>(0.5, -0.5, 0.5),
        vec3<f32>(0.5, 0.5, 0.5), vec3<f32>(-0.5, 0.5, 0.5),
    );
    var indices = array<u32, 36>(
        4u, 5u, 6u, 4u, 6u, 7u,
        1u, 0u, 3u, 1u, 3u, 2u,
        0u, 4u, 7u, 0u, 7u, 3u,
        5u, 1u, 2u, 5u, 2u, 6u,
        3u, 7u, 6u, 3u, 6u, 2u,
        0u, 1u, 5u, 0u, 5u, 4u,
    );
    var shade = array<f32, 6>(1.0, 0.6, 0.75, 0.75, 0.9, 0.5);

    let inst = instances[i];
    var out: VertexOut;
    out.position = inst.mvp * vec4<f32>(corners[indices[v]], 1.0);
    out.color = vec4<f32>(inst.color.rgb * shade[v / 6u], inst.color.a);
    return out;
}

@fragment
fn fs_main(frag: VertexOut) -> @location(0) vec4<f32> {
    return frag.color;
}
`
