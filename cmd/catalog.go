package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	availabilityRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// catalogCmd администрирование справочника: специалисты, услуги и их связи
func catalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Управление специалистами, услугами и клиентами",
	}

	run := func(fn func(ctx context.Context, svc *catalogService.Service) (interface{}, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.close()

			wrapped := dbmetrics.Wrap(env.db, nil)
			svc := catalogService.NewService(
				catalogRepo.NewRepository(wrapped, env.dialect),
				availabilityRepo.NewRepository(wrapped, env.dialect),
				bookingRepo.NewRepository(wrapped, env.dialect),
				clientRepo.NewRepository(wrapped, env.dialect),
				txmanager.NewTransactionManager(wrapped),
				env.log,
			)

			result, err := fn(cmd.Context(), svc)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
	}

	// --- add-professional ---
	var profName, profPhone, profEmail string
	addProfessional := &cobra.Command{
		Use:   "add-professional",
		Short: "Добавить специалиста",
		RunE: run(func(ctx context.Context, svc *catalogService.Service) (interface{}, error) {
			req := &models.CreateProfessionalRequest{Name: profName, Phone: profPhone}
			if profEmail != "" {
				req.Email = &profEmail
			}
			return svc.CreateProfessional(ctx, req)
		}),
	}
	addProfessional.Flags().StringVar(&profName, "name", "", "имя специалиста")
	addProfessional.Flags().StringVar(&profPhone, "phone", "", "телефон")
	addProfessional.Flags().StringVar(&profEmail, "email", "", "email")
	_ = addProfessional.MarkFlagRequired("name")
	_ = addProfessional.MarkFlagRequired("phone")

	// --- add-service ---
	var serviceName, serviceDescription string
	var servicePrice float64
	var serviceDuration int
	addService := &cobra.Command{
		Use:   "add-service",
		Short: "Добавить услугу",
		RunE: run(func(ctx context.Context, svc *catalogService.Service) (interface{}, error) {
			req := &models.CreateServiceRequest{
				Name:            serviceName,
				Price:           servicePrice,
				DurationMinutes: serviceDuration,
			}
			if serviceDescription != "" {
				req.Description = &serviceDescription
			}
			return svc.CreateService(ctx, req)
		}),
	}
	addService.Flags().StringVar(&serviceName, "name", "", "название услуги")
	addService.Flags().StringVar(&serviceDescription, "description", "", "описание")
	addService.Flags().Float64Var(&servicePrice, "price", 0, "цена")
	addService.Flags().IntVar(&serviceDuration, "duration", 0, "длительность в минутах")
	_ = addService.MarkFlagRequired("name")
	_ = addService.MarkFlagRequired("duration")

	// --- link ---
	var linkProfessionalID, linkServiceID int64
	link := &cobra.Command{
		Use:   "link",
		Short: "Связать специалиста с услугой",
		RunE: run(func(ctx context.Context, svc *catalogService.Service) (interface{}, error) {
			return svc.LinkService(ctx, linkProfessionalID, linkServiceID)
		}),
	}
	link.Flags().Int64Var(&linkProfessionalID, "professional", 0, "ID специалиста")
	link.Flags().Int64Var(&linkServiceID, "service", 0, "ID услуги")
	_ = link.MarkFlagRequired("professional")
	_ = link.MarkFlagRequired("service")

	// --- set-duration ---
	var durationServiceID int64
	var durationMinutes int
	setDuration := &cobra.Command{
		Use:   "set-duration",
		Short: "Изменить длительность услуги (существующие записи не меняются)",
		RunE: run(func(ctx context.Context, svc *catalogService.Service) (interface{}, error) {
			if err := svc.SetServiceDuration(ctx, durationServiceID, durationMinutes); err != nil {
				return nil, err
			}
			return svc.GetService(ctx, durationServiceID)
		}),
	}
	setDuration.Flags().Int64Var(&durationServiceID, "service", 0, "ID услуги")
	setDuration.Flags().IntVar(&durationMinutes, "minutes", 0, "новая длительность в минутах")
	_ = setDuration.MarkFlagRequired("service")
	_ = setDuration.MarkFlagRequired("minutes")

	// --- delete-professional ---
	var deleteProfessionalID int64
	deleteProfessional := &cobra.Command{
		Use:   "delete-professional",
		Short: "Удалить специалиста вместе со связями, шаблонами и записями",
		RunE: run(func(ctx context.Context, svc *catalogService.Service) (interface{}, error) {
			return nil, svc.DeleteProfessional(ctx, deleteProfessionalID)
		}),
	}
	deleteProfessional.Flags().Int64Var(&deleteProfessionalID, "id", 0, "ID специалиста")
	_ = deleteProfessional.MarkFlagRequired("id")

	// --- delete-client ---
	var deleteClientID int64
	deleteClient := &cobra.Command{
		Use:   "delete-client",
		Short: "Удалить клиента вместе с его записями",
		RunE: run(func(ctx context.Context, svc *catalogService.Service) (interface{}, error) {
			return nil, svc.DeleteClient(ctx, deleteClientID)
		}),
	}
	deleteClient.Flags().Int64Var(&deleteClientID, "id", 0, "ID клиента")
	_ = deleteClient.MarkFlagRequired("id")

	cmd.AddCommand(addProfessional, addService, link, setDuration, deleteProfessional, deleteClient)
	return cmd
}
