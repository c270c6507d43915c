package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterCourierCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewRegisterCourierCommand(courierID, "Dana Reyes")
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	courierRepo.On("Add", ctx, mock.MatchedBy(func(c *courier.Courier) bool {
		return c.ID().IsEqual(courierID) && c.Name() == "Dana Reyes" && !c.IsOnline()
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRegisterCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewRegisterCourierCommand_EmptyName(t *testing.T) {
	_, err := commands.NewRegisterCourierCommand(kernel.NewUUID(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSetCourierStatusCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	registered, err := courier.NewCourier(kernel.NewUUID(), "Dana Reyes")
	require.NoError(t, err)

	cmd, err := commands.NewSetCourierStatusCommand(registered.ID(), courier.StatusOnline)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo)
	courierRepo.On("Get", ctx, registered.ID()).Return(registered, nil).Once()
	courierRepo.On("Update", ctx, registered).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewSetCourierStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, registered.IsOnline())
	uow.AssertExpectations(t)
}

func TestNewSetCourierStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewSetCourierStatusCommand(kernel.NewUUID(), courier.Status("busy"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
