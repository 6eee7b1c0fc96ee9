//go:build windows

package webgpu

import (
	"encoding/binary"
	"unsafe"

	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
)

// resultUsage is the usage of every pooled result buffer.
const resultUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer holding data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer of u32 params padded to 16 bytes.
func (b *Backend) createUniformBuffer(params ...uint32) (*wgpu.Buffer, uint64) {
	size := uint64(len(params) * 4)
	alignedSize := (size + 15) &^ 15

	data := make([]byte, alignedSize)
	for i, v := range params {
		binary.LittleEndian.PutUint32(data[i*4:], v)
	}
	return b.createBuffer(data, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst), alignedSize
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, errors.Wrap(err, "failed to map staging buffer")
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	stagingBuffer.Unmap()

	return result, nil
}

// dispatch runs a compiled shader over threads invocations with the given
// read-only inputs and uniform params, and returns resultSize bytes of output.
// Bindings are inputs first, then the result, then the params.
func (b *Backend) dispatch(shaderName, shaderCode string, threads int, resultSize uint64, params []uint32, inputs ...[]byte) ([]byte, error) {
	shader := b.compileShader(shaderName, shaderCode)
	pipeline := b.getOrCreatePipeline(shaderName, shader)

	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	for i, data := range inputs {
		buffer := b.createBuffer(data, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buffer.Release()
		//nolint:gosec // G115: binding index and byte length are non-negative
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buffer, 0, uint64(len(data))))
	}

	bufferResult := b.bufferPool.Acquire(resultSize, resultUsage)
	defer b.bufferPool.Release(bufferResult, resultSize, resultUsage)
	//nolint:gosec // G115: binding index is non-negative
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)), bufferResult, 0, resultSize))

	bufferParams, paramsSize := b.createUniformBuffer(params...)
	defer bufferParams.Release()
	//nolint:gosec // G115: binding index is non-negative
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)+1), bufferParams, 0, paramsSize))

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	// ceil(threads / workgroupSize)
	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((threads + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	return b.readBuffer(bufferResult, resultSize)
}

// runAbsDiff computes |a - b| on the GPU. a and b are non-empty float32 tensors of equal shape.
func (b *Backend) runAbsDiff(a, other *tensor.RawTensor) (*tensor.RawTensor, error) {
	numElements := a.NumElements()
	//nolint:gosec // G115: ByteSize() and NumElements() are non-negative
	data, err := b.dispatch("absdiff", absDiffShader, numElements, uint64(a.ByteSize()),
		[]uint32{uint32(numElements)}, a.Data(), other.Data())
	if err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(a.Shape(), tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}

// runReduceDim sums or averages a non-empty float32 tensor along axis
// into a tensor of outShape on the GPU.
func (b *Backend) runReduceDim(x *tensor.RawTensor, axis int, outShape tensor.Shape, mean bool) (*tensor.RawTensor, error) {
	outer, size, inner := x.Shape().Split(axis)
	var meanFlag uint32
	if mean {
		meanFlag = 1
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G115: dimensions and byte sizes are non-negative
	data, err := b.dispatch("reducedim", reduceDimShader, outer*inner, uint64(result.ByteSize()),
		[]uint32{uint32(outer), uint32(size), uint32(inner), meanFlag}, x.Data())
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}
