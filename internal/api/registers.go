package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/skybi/bitflags/bitflag"
	"github.com/skybi/bitflags/internal/api/schema"
	"github.com/skybi/bitflags/internal/api/validation"
	"github.com/skybi/bitflags/internal/register"
)

const maxRegistersPerPage = 100

var (
	errRegisterNameInvalid = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "register.name.invalid",
			Message: fmt.Sprintf("Register names have to consist of 1 to %d characters.", register.MaxNameLength),
			Details: map[string]any{
				"name":       name,
				"max_length": register.MaxNameLength,
			},
		}
	}
	errRegisterNameTaken = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "register.name.taken",
			Message: fmt.Sprintf("The register name '%s' is already in use.", name),
			Details: map[string]any{
				"name": name,
			},
		}
	}
	errRegisterBitOverflow = func(pos uint) *schema.Error {
		size := bitflag.Size[uint64]()
		return &schema.Error{
			Type:    "register.bit.overflow",
			Message: fmt.Sprintf("The bit position %d exceeds the register size of %d bits.", pos, size),
			Details: map[string]any{
				"position": pos,
				"size":     size,
			},
		}
	}
	errRegisterRangeInvalid = func(r bitflag.Range) *schema.Error {
		size := bitflag.Size[uint64]()
		return &schema.Error{
			Type:    "register.range.invalid",
			Message: fmt.Sprintf("The bit range %d..%d is malformed or exceeds the register size of %d bits.", r.Start, r.End, size),
			Details: map[string]any{
				"start": r.Start,
				"end":   r.End,
				"size":  size,
			},
		}
	}
)

type registerResponse struct {
	*register.Register
	Binary       string `json:"binary"`
	Empty        bool   `json:"empty"`
	SetBits      int    `json:"set_bits"`
	SetPositions []uint `json:"set_positions"`
}

func newRegisterResponse(reg *register.Register) *registerResponse {
	positions := []uint{}
	pos := uint(0)
	for set := range reg.Flags.Iter() {
		if set {
			positions = append(positions, pos)
		}
		pos++
	}
	return &registerResponse{
		Register:     reg,
		Binary:       reg.Flags.String(),
		Empty:        reg.Flags.IsEmpty(),
		SetBits:      reg.Flags.Len(),
		SetPositions: positions,
	}
}

// EndpointGetRegisters handles the 'GET /v1/registers' endpoint
func (service *Service) EndpointGetRegisters(writer http.ResponseWriter, request *http.Request) {
	offset, validationErr := validation.QueryNumber(request, "offset", false, 0, math.MaxInt64)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}
	limit, validationErr := validation.QueryNumber(request, "limit", false, 10, maxRegistersPerPage)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	registers, total, err := service.Storage.Registers().Get(request.Context(), offset, limit)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	data := make([]*registerResponse, 0, len(registers))
	for _, reg := range registers {
		data = append(data, newRegisterResponse(reg))
	}
	service.writer.WriteJSON(writer, schema.NewPage(offset, limit, total, data))
}

// EndpointGetRegister handles the 'GET /v1/registers/{id}' endpoint
func (service *Service) EndpointGetRegister(writer http.ResponseWriter, request *http.Request) {
	reg, ok := service.loadRegister(writer, request)
	if !ok {
		return
	}
	service.writer.WriteJSON(writer, newRegisterResponse(reg))
}

type endpointCreateRegisterRequestPayload struct {
	Name  *string `json:"name" required:"true"`
	Value *uint64 `json:"value"`
}

// EndpointCreateRegister handles the 'POST /v1/registers' endpoint
func (service *Service) EndpointCreateRegister(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateRegisterRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	name, ok := register.SanitizeName(*payload.Name)
	if !ok {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errRegisterNameInvalid(name))
		return
	}
	create := &register.Create{Name: name}
	if payload.Value != nil {
		create.Flags = bitflag.NewWithValue(*payload.Value)
	}

	reg, err := service.Storage.Registers().Create(request.Context(), create)
	if err != nil {
		if errors.Is(err, register.ErrNameTaken) {
			service.writer.WriteErrors(writer, http.StatusConflict, errRegisterNameTaken(name))
			return
		}
		service.writer.WriteInternalError(writer, err)
		return
	}

	log.Debug().Str("register_id", reg.ID.String()).Str("name", reg.Name).Msg("created register")
	service.writer.WriteJSONCode(writer, http.StatusCreated, newRegisterResponse(reg))
}

// EndpointDeleteRegister handles the 'DELETE /v1/registers/{id}' endpoint
func (service *Service) EndpointDeleteRegister(writer http.ResponseWriter, request *http.Request) {
	service.mutations.Lock()
	defer service.mutations.Unlock()

	reg, ok := service.loadRegister(writer, request)
	if !ok {
		return
	}
	if err := service.Storage.Registers().Delete(request.Context(), reg.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteNoContent(writer)
}

type registerBitResponse struct {
	Position uint `json:"position"`
	Value    bool `json:"value"`
}

// EndpointGetRegisterBit handles the 'GET /v1/registers/{id}/bits/{pos}' endpoint
func (service *Service) EndpointGetRegisterBit(writer http.ResponseWriter, request *http.Request) {
	pos, ok := service.bitPosition(writer, request)
	if !ok {
		return
	}
	reg, ok := service.loadRegister(writer, request)
	if !ok {
		return
	}
	service.writer.WriteJSON(writer, &registerBitResponse{
		Position: pos,
		Value:    reg.Flags.Get(pos),
	})
}

type endpointSetRegisterBitRequestPayload struct {
	Value *bool `json:"value" required:"true"`
}

// EndpointSetRegisterBit handles the 'PUT /v1/registers/{id}/bits/{pos}' endpoint
func (service *Service) EndpointSetRegisterBit(writer http.ResponseWriter, request *http.Request) {
	pos, ok := service.bitPosition(writer, request)
	if !ok {
		return
	}
	payload, ok := unmarshalPayload[endpointSetRegisterBitRequestPayload](service, writer, request)
	if !ok {
		return
	}
	service.mutateRegister(writer, request, func(flags *register.Flags) {
		flags.Set(pos, *payload.Value)
	})
}

type registerRangeResponse struct {
	Start  uint   `json:"start"`
	End    uint   `json:"end"`
	Value  uint64 `json:"value"`
	Binary string `json:"binary"`
}

// EndpointGetRegisterRange handles the 'GET /v1/registers/{id}/range' endpoint
func (service *Service) EndpointGetRegisterRange(writer http.ResponseWriter, request *http.Request) {
	start, validationErr := validation.QueryNumber(request, "start", true, 0, math.MaxUint32)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}
	end, validationErr := validation.QueryNumber(request, "end", true, 0, math.MaxUint32)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}
	r := bitflag.Range{Start: uint(start), End: uint(end)}

	reg, ok := service.loadRegister(writer, request)
	if !ok {
		return
	}
	value, ok := reg.Flags.GetRange(r)
	if !ok {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errRegisterRangeInvalid(r))
		return
	}
	service.writer.WriteJSON(writer, &registerRangeResponse{
		Start:  r.Start,
		End:    r.End,
		Value:  value,
		Binary: fmt.Sprintf("%0*b", int(r.Len()), value),
	})
}

type endpointSetRegisterRangeRequestPayload struct {
	Start *uint   `json:"start" required:"true"`
	End   *uint   `json:"end" required:"true"`
	Value *uint64 `json:"value" required:"true"`
}

// EndpointSetRegisterRange handles the 'PUT /v1/registers/{id}/range' endpoint
func (service *Service) EndpointSetRegisterRange(writer http.ResponseWriter, request *http.Request) {
	payload, ok := unmarshalPayload[endpointSetRegisterRangeRequestPayload](service, writer, request)
	if !ok {
		return
	}
	r := bitflag.Range{Start: *payload.Start, End: *payload.End}
	if !bitflag.IsValid[uint64](r) {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errRegisterRangeInvalid(r))
		return
	}
	service.mutateRegister(writer, request, func(flags *register.Flags) {
		flags.SetRange(r, *payload.Value)
	})
}

type endpointAddToRegisterRequestPayload struct {
	Value *uint64 `json:"value" required:"true"`
}

// EndpointAddToRegister handles the 'POST /v1/registers/{id}/add' endpoint.
// The value is added arithmetically and wraps around on overflow.
func (service *Service) EndpointAddToRegister(writer http.ResponseWriter, request *http.Request) {
	payload, ok := unmarshalPayload[endpointAddToRegisterRequestPayload](service, writer, request)
	if !ok {
		return
	}
	service.mutateRegister(writer, request, func(flags *register.Flags) {
		*flags = flags.AddValue(*payload.Value)
	})
}

// EndpointClearRegister handles the 'POST /v1/registers/{id}/clear' endpoint
func (service *Service) EndpointClearRegister(writer http.ResponseWriter, request *http.Request) {
	service.mutateRegister(writer, request, func(flags *register.Flags) {
		flags.Clear()
	})
}

func unmarshalPayload[T any](service *Service, writer http.ResponseWriter, request *http.Request) (*T, bool) {
	payload, validationErrs, err := schema.UnmarshalBody[T](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return nil, false
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return nil, false
	}
	return payload, true
}

func (service *Service) bitPosition(writer http.ResponseWriter, request *http.Request) (uint, bool) {
	raw, validationErr := validation.PathNumber(request, "pos", math.MaxUint32)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return 0, false
	}
	pos := uint(raw)
	if bitflag.IsOverflow[uint64](pos) {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errRegisterBitOverflow(pos))
		return 0, false
	}
	return pos, true
}

func (service *Service) loadRegister(writer http.ResponseWriter, request *http.Request) (*register.Register, bool) {
	id, validationErr := validation.PathUUID(request, "id")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return nil, false
	}

	reg, err := service.Storage.Registers().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return nil, false
	}
	if reg == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return nil, false
	}
	return reg, true
}

func (service *Service) mutateRegister(writer http.ResponseWriter, request *http.Request, mutate func(flags *register.Flags)) {
	service.mutations.Lock()
	defer service.mutations.Unlock()

	reg, ok := service.loadRegister(writer, request)
	if !ok {
		return
	}
	flags := reg.Flags
	mutate(&flags)

	updated, err := service.Storage.Registers().Update(request.Context(), reg.ID, &register.Update{Flags: &flags})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if updated == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}
	service.writer.WriteJSON(writer, newRegisterResponse(updated))
}
